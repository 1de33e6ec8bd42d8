package commands

import "github.com/doeshing/aiagent-go/internal/domain"

// History display constants
const (
	// DefaultHistoryLimit is the default number of history records to display
	DefaultHistoryLimit = domain.DefaultHistoryLimit
	// DefaultHistorySearchLimit is the default number of search results to return
	DefaultHistorySearchLimit = domain.DefaultHistorySearchLimit
	// MaxHistoryAnalysisRecords bounds the records read by history stats
	MaxHistoryAnalysisRecords = 1000
	// PreviewWidth is how many characters of a response list views show
	PreviewWidth = 60
)

// TimestampFormat is the standard timestamp format
const TimestampFormat = domain.TimestampFormat

// Error messages
const (
	ErrDoctorServiceUnavailable = "doctor service unavailable"
	ErrHistoryStoreUnavailable  = "history store unavailable"
	ErrKnowledgeUnavailable     = "knowledge store unavailable"
	ErrQueryRequired            = "--query required"
)

// Success messages
const (
	MsgConfigurationValid = "Configuration valid"
	MsgNoHistoryRecorded  = "No history recorded yet."
	MsgNoKnowledge        = "Knowledge base is empty."
	MsgNoMatch            = "No match."
)
