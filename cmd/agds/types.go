package main

import "github.com/MaciejGeldon/agds/lib/containers"

// numericKey and stringKey are the two concrete key domains this CLI
// supports, selected at runtime by the --kind flag. Go generics can't
// select a type parameter from a runtime string, so each subcommand
// branches once on kindFlag and calls the instantiation that matches,
// rather than threading a type parameter through cobra itself.
type numericKey = containers.NumericKey[float64]
type stringKey = containers.NativeOrdered[string]
