package enum

// PrintJobStatus records the outcome of a print launch
type PrintJobStatus string

const (
	PrintJobStatusLaunched PrintJobStatus = "launched"
	PrintJobStatusBlocked  PrintJobStatus = "blocked"
)

// PrintKind names the document family that was printed
type PrintKind string

const (
	PrintKindBookingReceipt    PrintKind = "booking_receipt"
	PrintKindSupplierStatement PrintKind = "supplier_statement"
	PrintKindReport            PrintKind = "purchase_report"
)
