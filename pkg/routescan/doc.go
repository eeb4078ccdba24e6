// Package routescan discovers the application route tree from page files.
//
// Pages are Go files under the pages directory (app/routes by default) that
// export a page handler, i.e. a function whose name ends in "Page":
//
//	app/routes/
//	├── index.go           → /             (index)
//	├── about.go           → /about        (about)
//	├── users.go           → /users        (unnamed), parent of users/*
//	├── users/
//	│   ├── index.go       → ""            (users), relative child
//	│   └── [id].go        → :id           (users-id), relative child
//	├── docs/
//	│   └── [...path].go   → /docs/*path   (docs-path)
//	└── api/               → skipped, API routes are not pages
//
// A page file next to a directory of the same name becomes the parent of the
// pages inside that directory; their paths are relative to the parent.
//
// # Parameters
//
//	[id].go        → :id
//	[id:int].go    → :id:int
//	[...slug].go   → *slug
//	_id_.go        → :id
//	_slug___.go    → *slug
package routescan
