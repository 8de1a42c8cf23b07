package reservation

import "github.com/m04kA/SMC-ScheduleService/pkg/dbmetrics"

// DBExecutor интерфейс выполнения запросов.
// Поддерживает *sql.DB, *dbmetrics.DB и активную транзакцию из context.
type DBExecutor = dbmetrics.Executor
