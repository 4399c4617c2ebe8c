package exitcode

const (
	Success     = 0
	UsageError  = 1
	InputError  = 2
	DetectError = 3
	DBConnError = 4
	StoreError  = 5
	ExportError = 6
	ServeError  = 7
)
