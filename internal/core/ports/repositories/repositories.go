package repositories

// RepositoryProvider aggregates all repository facades for dependency injection
type RepositoryProvider struct {
	Account   AccountRepositoryFacade
	Journal   JournalRepositoryWithTx
	Reporting ReportingRepository
}
