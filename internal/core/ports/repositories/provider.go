package repositories

// RepositoryProvider bundles every repository implementation handed to the
// service container.
type RepositoryProvider struct {
	AccountRepo   AccountRepository
	SettingsRepo  SettingsRepository
	JournalRepo   JournalRepository
	ReportingRepo ReportingRepository
	InventoryRepo InventoryRepository
	AuditRepo     AuditRepository
	StandardsRepo StandardsRepository
	EggRoomRepo   EggRoomRepository
	FlockRepo     FlockRepository
	EventRepo     EventLogRepository
}
