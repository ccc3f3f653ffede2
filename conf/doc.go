// Package conf builds a lookup tree from INI sources and resolves item
// queries against it, falling back to a caller-supplied default tree.
//
// A [Config] is keyed by up to three levels: source, section and item. The
// source and section levels are each optional and fixed at construction:
//
//	c, err := conf.New(ctx,
//		conf.WithFileMatters(true),
//		conf.WithSources("app.ini", "db.ini"),
//		conf.WithDefaults(conf.Tree{
//			"db.ini": map[string]any{"db": map[string]any{"port": "5432"}},
//		}),
//	)
//
//	port, err := c.Item(ctx, conf.Identifier{
//		Source: "db.ini", Section: "db", Item: "port",
//	})
//
// A miss is reported as a [*NotFoundError] naming the first absent level.
// Before it is returned, the same path is tried in the default tree. A hit
// there wins, and a miss keeps the original error.
//
// Loading is explicit by default. With [WithExplicitLoad](false) and files
// mattering, the first lookup that names an unseen source loads it.
// Load failures are logged and swallowed unless [WithSilentErrors](false)
// or [Silently](false) is given.
package conf
