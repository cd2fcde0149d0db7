package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/rajabalanj/poultry-ledger/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:   newPgxAccountRepository(dbPool),
		SettingsRepo:  newPgxSettingsRepository(dbPool),
		JournalRepo:   newPgxJournalRepository(dbPool),
		ReportingRepo: newPgxReportingRepository(dbPool),
		InventoryRepo: newPgxInventoryRepository(dbPool),
		AuditRepo:     newPgxAuditRepository(dbPool),
		StandardsRepo: newPgxStandardsRepository(dbPool),
		EggRoomRepo:   newPgxEggRoomRepository(dbPool),
		FlockRepo:     newPgxFlockRepository(dbPool),
		EventRepo:     newPgxEventLogRepository(dbPool),
	}
}
