// Package ofixture is a test-data registry for Go: register a builder per type
// name, then let tests create instances, collections and per-call variants
// instead of hand-writing fixture objects.
//
// The repository is organized as:
//
//   - fixture: the registry (Fixture), builders, customizations, freezing and
//     per-call field overrides (CustomizableType)
//   - generator: value generators (sizes, ranges, UUIDs) consumed by fixtures
//     and builders
//   - cmd/fixturegen: code generator emitting fixture.Builder types from a
//     JSON description of a struct
//   - examples/*: a runnable example wiring generated and hand-written builders
//
// Resolution is single-threaded and synchronous: a Fixture is meant to live
// for one test or one suite.
package ofixture
