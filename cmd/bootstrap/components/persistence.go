package components

import (
	"rental-booking/internal/infra/db"
	"rental-booking/internal/infra/readstore"
	"rental-booking/internal/infra/uow"
	"rental-booking/internal/usecase/queries"
	"rental-booking/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	repositoryModule,
)

var baseOption = fx.Provide(
	NewDBTX,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		fx.Annotate(
			readstore.NewAvailabilityReadStore,
			fx.As(new(queries.AvailabilityReadStore)),
		),
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
		),
		NewQuerySources,
	),
)

var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		// Repositories are created per transaction inside the unit of work.
		uow.NewPostgresUoW,
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}

// NewQuerySources exposes the pool-backed command reads through the narrow
// lookups the query services depend on.
func NewQuerySources(u shared.UnitOfWork) (shared.PricingSource, shared.CouponLookup, queries.RefundSource) {
	reads := u.CommandReads()
	return reads, reads, reads
}
