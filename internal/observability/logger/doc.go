// Package logger provides a singleton Zap logger with context-based scoping.
//
// # Design Decisions
//
//   - Singleton: Una sola instancia global inicializada con Init().
//   - Context Scoping: Cada request puede tener su propio logger "scoped" con
//     campos adicionales (request_id, email, etc.) sin crear un nuevo core.
//   - Environments: "dev" usa consola con colores, "prod" usa JSON.
//
// # Usage
//
// Inicialización (una vez en main.go):
//
//	logger.Init(logger.Config{
//	    Env:   os.Getenv("APP_ENV"),
//	    Level: os.Getenv("LOG_LEVEL"),
//	})
//	defer logger.Sync()
//
// En handlers/services (con contexto):
//
//	log := logger.From(ctx)
//	log.Info("cart item created", logger.Email(email))
package logger
