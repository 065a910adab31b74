package config

// SourceFileExt is the canonical PeopleCode source extension.
const SourceFileExt = ".pcode"

// SourceFileExtensions are all recognized source file extensions.
var SourceFileExtensions = []string{".pcode", ".ppl", ".pcd"}

// MaxRecursionDepth bounds expression nesting in the parser. Past this
// the parser records a diagnostic and resynchronizes instead of
// overflowing the stack on pathological input.
const MaxRecursionDepth = 200

// ValidatorStepBudget bounds the backtracking search of the
// function-call validator. Deeply nested optional repeated groups can
// otherwise backtrack combinatorially.
const ValidatorStepBudget = 4096

// CacheGenerationPeriod is the number of cache operations between
// eviction sweeps of the metadata cache.
const CacheGenerationPeriod = 256

// CacheEvictCount is the number of least-recently-used entries removed
// per eviction sweep.
const CacheEvictCount = 32

// CacheMaxEntries is the soft ceiling that triggers an early sweep
// regardless of the generation counter.
const CacheMaxEntries = 512
