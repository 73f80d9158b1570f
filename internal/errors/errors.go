package errors

// Predefined errors shared across packages. Compare with errors.Is.
var (
	// ErrNoData is returned when no input file produced any row.
	ErrNoData = &AppError{Type: ErrTypeNoData}

	// ErrDataDirMissing is returned when the configured data directory does not exist.
	ErrDataDirMissing = &AppError{Type: ErrTypeNotFound, Message: "data directory not found"}

	// ErrMissingColumn marks a workbook lacking a required column.
	ErrMissingColumn = &AppError{Type: ErrTypeValidation, Message: "required column missing"}

	// ErrUnknownCountry marks a file whose country label cannot be resolved.
	ErrUnknownCountry = &AppError{Type: ErrTypeValidation, Message: "country label unresolved"}

	// ErrEmptyChart is returned by chart writers that were given no data points.
	ErrEmptyChart = &AppError{Type: ErrTypeRender, Message: "no data to plot"}
)

// Process exit codes used by the command-line entry points.
const (
	ExitOK         = 0
	ExitFailure    = 1
	ExitConfig     = 2
	ExitInputError = 3
)

// ExitCode maps an error to the process exit code.
// A run with no data is not a failure.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	switch TypeOf(err) {
	case ErrTypeNoData:
		return ExitOK
	case ErrTypeConfig:
		return ExitConfig
	case ErrTypeNotFound:
		return ExitInputError
	default:
		return ExitFailure
	}
}
