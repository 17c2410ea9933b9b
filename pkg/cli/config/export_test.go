package config

func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{level: level, format: format, output: output}
}

func NewSessionForTest(path, token string) *Session {
	return &Session{path: path, token: token}
}

func NewNotionForTest(databaseID string) *Notion {
	return &Notion{databaseID: databaseID}
}

func NewTaxonomyForTest(path string) *Taxonomy {
	return &Taxonomy{path: path}
}
