package building

import (
	"github.com/m04kA/SMC-FacilityBooking/pkg/dbmetrics"
)

// DBExecutor интерфейс для выполнения запросов (*sql.DB, *dbmetrics.DB или транзакция)
type DBExecutor = dbmetrics.DBExecutor
