package ringtable

// noCell - Sentinel for cell links that point nowhere
const noCell int32 = -1

// minCapacity - Smallest number of cells a table is created with
const minCapacity int64 = 8

// maxCapacity - Largest number of cells a backing block can hold, bounded by the int32 cell links
const maxCapacity int64 = 1 << 31
