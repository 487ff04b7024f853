package cmd

type Config struct {
	HTTPPort             string
	DBHost               string
	DBPort               string
	DBUser               string
	DBPassword           string
	DBName               string
	DBSslMode            string
	SplitUserEditedLines bool
	ResyncSchedule       string
	ResyncCompanyIDs     string
}
