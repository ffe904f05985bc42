package config

// NewLoggerForTest creates a Logger config for testing purposes
func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{level: level, format: format, output: output}
}

// NewPolicyForTest creates a Policy config for testing purposes
func NewPolicyForTest(path string) *Policy {
	return &Policy{path: path}
}

// NewRepositoryForTest creates a Repository config for testing purposes
func NewRepositoryForTest(dataFile, credentialsFile string) *Repository {
	return &Repository{dataFile: dataFile, credentialsFile: credentialsFile}
}

// NewReportForTest creates a Report config for testing purposes
func NewReportForTest(sink, dir, s3Bucket, gcsBucket string) *Report {
	return &Report{sink: sink, dir: dir, s3Bucket: s3Bucket, s3Region: "us-east-1", gcsBucket: gcsBucket}
}

// NewLogHandler is exported for testing
var NewLogHandler = newLogHandler
