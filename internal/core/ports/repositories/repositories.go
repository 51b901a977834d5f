package repositories

// RepositoryProvider groups the repository implementations handed to the
// service container.
type RepositoryProvider struct {
	EntryRepo        EntryRepositoryWithTx
	SequenceRepo     SequenceRepository
	ReportingRepo    ReportingRepository
	DocumentRepo     DocumentRepositoryFacade
	AccountRepo      AccountReader
	FiscalPeriodRepo FiscalPeriodReader
}
