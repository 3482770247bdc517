// Package cli provides the interactive bloghub terminal client.
//
// Every page of the blog front end is bound to a route: the feed at "/",
// "/login", "/signup", "/create", "/profile", "/blog/:id" and "/search?q=".
// A page renders, prompts or fetches under its own navigation context and
// returns the path to redirect to, which the router follows for a bounded
// number of hops. Ctrl+C cancels the running page; a cancelled page drops
// its result instead of rendering it.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See runREPL for the command set.
package cli
