package libdiff

const (
	DeletePrefix  = "-"
	InsertPrefix  = "+"
	EqualPrefix   = " "
	ContextLines  = 3
	NoNewlineNote = `\ No newline at end of file`
)
