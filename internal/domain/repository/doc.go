// Package repository declares the storage contracts the services depend on.
//
// Implementations live under internal/store (memory, sqlite, pg) and must
// translate driver errors into the sentinels in errors.go:
//
//	services / controllers
//	        │
//	        ▼
//	domain/repository (UserRepository, NoteRepository)
//	        │
//	  ┌─────┼──────┬────────┐
//	  ▼     ▼      ▼        ▼
//	memory sqlite  pg   cached (decorator)
//
// Context is always the first parameter.
package repository
