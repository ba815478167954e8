// Package notecache is the Composition Root for the notecache service.
//
// It connects the core business logic (pkg/core) with the storage adapter
// (pkg/adapters/fs) and exposes a small functional-options API.
//
// Storage model:
//
// A store is one flat directory. Every regular file in it is a note: the file
// name is the note name and the file content is the note text. There is no
// index, no sidecar metadata and no extension convention, so the directory can
// be inspected and edited with ordinary tools.
//
// Usage:
//
//	svc, err := notecache.New("./cache",
//		notecache.WithLogger(logger),
//	)
//
//	err = svc.CreateNote(ctx, "foo.txt", "hello")
//	note, err := svc.GetNote(ctx, "foo.txt")
package notecache
