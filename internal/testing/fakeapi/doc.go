// Package fakeapi provides an in-memory forum backend for tests.
//
// The fake speaks the same wire contract as the production API: bearer
// token authentication, paginated post and comment listings, nested
// comment trees, and multipart file upload. Tests seed state directly and
// point a real client at the server's URL:
//
//	server := fakeapi.New(t)
//	alice := server.SeedUser("alice", "secret123")
//	forum := server.SeedForum("General", "everything else", alice)
//
//	client := api.New(api.Config{BaseURL: server.URL(), Store: store})
//
// Set LegacyTokenField to exercise the older "token" auth response field.
package fakeapi
