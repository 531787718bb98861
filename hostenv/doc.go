// Package hostenv is the only place in the module that inspects process
// environment variables. It detects serverless execution contexts (Lambda,
// Cloud Functions, Cloud Run, Azure Functions, Vercel, Netlify) and derives
// defaults suited to them: no cross-invocation handle retention and an
// enabled result cache. Callers pass the resulting Config into the loader
// and pool packages explicitly; core packages never read the environment
// themselves.
package hostenv
