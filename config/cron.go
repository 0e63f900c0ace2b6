package config

// Map of job names to job functions
type CronJob struct {
	Schedule string
	Job      func(...string)
}

// Populated from init() in the job packages (e.g. cron/jobs) to avoid an
// import cycle between config and the jobs that use its helpers.
var CronJobs = map[string]CronJob{
	// Add more jobs here
}
