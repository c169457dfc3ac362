package pgsql

import (
	portsrepo "github.com/SscSPs/voucher_engine/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	voucherRepo := newPgxVoucherRepository(dbPool, accountRepo)

	return portsrepo.RepositoryProvider{
		AccountRepo: accountRepo,
		VoucherRepo: voucherRepo,
	}
}
