// Package magetasks holds the build, test and lint tasks behind stew's
// Magefile. Tasks write their progress to an io.Writer and shell out through
// a replaceable command runner, so they can be exercised without a toolchain.
package magetasks
