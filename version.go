package formflow

// Version is the library version, overridable at build time with
// -ldflags "-X github.com/formflow/formflow.Version=...".
var Version = "0.1.0"
