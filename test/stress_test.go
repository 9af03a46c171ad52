//go:build stress

package test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/gostonefire/handlestore"
	"github.com/gostonefire/handlestore/internal/utils"
	"github.com/stretchr/testify/assert"
)

type record struct {
	key   []byte
	value []byte
}

func createTestdata(rnd *rand.Rand, amount, keyLength, valueLength int) []record {
	records := make([]record, amount)
	seen := make(map[string]bool, amount)

	for i := 0; i < amount; i++ {
		key := make([]byte, keyLength)
		for {
			rnd.Read(key)
			if !seen[string(key)] {
				break
			}
		}
		seen[string(key)] = true

		value := make([]byte, valueLength)
		rnd.Read(value)

		records[i] = record{key: key, value: value}
	}

	return records
}

func setTestdata(records []record, hashMap *handlestore.HashMap) error {
	for i := range records {
		if !hashMap.Set(records[i].key, records[i].value) {
			return fmt.Errorf("set rejected record %d", i)
		}
	}

	return nil
}

func popTestdata(records []record, hashMap *handlestore.HashMap) error {
	for i := range records {
		value, ok := hashMap.Pop(records[i].key)
		if !ok {
			return fmt.Errorf("pop found no record %d", i)
		}
		if !utils.IsEqual(value, records[i].value) {
			return fmt.Errorf("popped wrong value for record %d", i)
		}
	}

	return nil
}

func getTestdata(records []record, hashMap *handlestore.HashMap, shouldNotExist bool) error {
	for i := range records {
		value, ok := hashMap.Get(records[i].key)
		if shouldNotExist {
			if ok {
				return fmt.Errorf("get should not find record %d", i)
			}
		} else {
			if !ok {
				return fmt.Errorf("get found no record %d", i)
			}
			if !utils.IsEqual(value, records[i].value) {
				return fmt.Errorf("got wrong value for record %d", i)
			}
		}
	}

	return nil
}

type TestCaseStressTest struct {
	name            string
	initialCapacity int64
	keyLength       int
	valueLength     int
	nTestdata       int
}

func TestStressHashMap(t *testing.T) {
	t.Run("stress tests with lots of records and reorgs", func(t *testing.T) {
		// Prepare
		tests := []TestCaseStressTest{
			{name: "SmallStart", initialCapacity: 8, keyLength: 20, valueLength: 10, nTestdata: 100000},
			{name: "PreSized", initialCapacity: 1000000, keyLength: 20, valueLength: 10, nTestdata: 300000},
		}

		for _, test := range tests {
			t.Run(fmt.Sprintf("handles lots of stress and reorgs for %s", test.name), func(t *testing.T) {
				// Prepare test data
				rnd := rand.New(rand.NewSource(123))
				testdata1 := createTestdata(rnd, test.nTestdata, test.keyLength, test.valueLength)
				testdata2 := createTestdata(rnd, test.nTestdata, test.keyLength, test.valueLength)
				testdata3 := createTestdata(rnd, test.nTestdata, test.keyLength, test.valueLength)

				// Prepare hash map
				hashMap := handlestore.NewHashMap(handlestore.HashMapConf{
					KeyLength:       int64(test.keyLength),
					ValueLength:     int64(test.valueLength),
					InitialCapacity: test.initialCapacity,
				})

				// Set first two sets of test data
				err := setTestdata(testdata1, hashMap)
				assert.NoError(t, err, "set test set 1")
				err = setTestdata(testdata2, hashMap)
				assert.NoError(t, err, "set test set 2")

				// Remove first set from the hash map
				err = popTestdata(testdata1, hashMap)
				assert.NoError(t, err, "pop test set 1")

				// Set third set of test data
				err = setTestdata(testdata3, hashMap)
				assert.NoError(t, err, "set test set 3")

				// Check all three test sets
				err = getTestdata(testdata1, hashMap, true)
				assert.NoError(t, err, "get test set 1, should not exist")
				err = getTestdata(testdata2, hashMap, false)
				assert.NoError(t, err, "get test set 2")
				err = getTestdata(testdata3, hashMap, false)
				assert.NoError(t, err, "get test set 3")
				assert.Equal(t, int64(2*test.nTestdata), hashMap.Len(), "two sets left in the map")
			})
		}
	})
}

func TestStressSlotPool(t *testing.T) {
	t.Run("handles long random churn against a reference model", func(t *testing.T) {
		// Prepare
		rnd := rand.New(rand.NewSource(456))
		pool := handlestore.NewSlotPool[int64](8)
		reference := make(map[handlestore.Handle]int64)
		retired := make([]handlestore.Handle, 0, 100000)

		// Execute
		for op := 0; op < 500000; op++ {
			if len(reference) == 0 || rnd.Intn(5) < 3 {
				value := rnd.Int63()
				handle := pool.Insert(value)
				_, clash := reference[handle]
				assert.False(t, clash, "fresh handle never clashes with a live one at op %d", op)
				reference[handle] = value
			} else {
				for handle := range reference {
					assert.True(t, pool.Remove(handle), "live handle removable at op %d", op)
					delete(reference, handle)
					if len(retired) < cap(retired) {
						retired = append(retired, handle)
					}
					break
				}
			}
		}

		// Check
		assert.Equal(t, int64(len(reference)), pool.Len(), "size agrees with reference")
		for handle, expected := range reference {
			value, ok := pool.Read(handle)
			assert.True(t, ok, "live handle resolves")
			assert.Equal(t, expected, value, "live handle holds its value")
		}
		for _, handle := range retired {
			_, ok := pool.Read(handle)
			assert.False(t, ok, "retired handle stays stale")
		}
	})
}

func TestStressPackedPool(t *testing.T) {
	t.Run("stays packed through long random churn", func(t *testing.T) {
		// Prepare
		rnd := rand.New(rand.NewSource(789))
		pool := handlestore.NewPackedPool[int64](8)
		reference := make(map[handlestore.Handle]int64)

		// Execute
		for op := 0; op < 500000; op++ {
			if len(reference) == 0 || rnd.Intn(5) < 3 {
				value := rnd.Int63()
				reference[pool.Insert(value)] = value
			} else {
				for handle := range reference {
					assert.True(t, pool.Remove(handle), "live handle removable at op %d", op)
					delete(reference, handle)
					break
				}
			}

			if op%100000 == 99999 {
				data := pool.Data()
				assert.Equal(t, len(reference), len(data), "data array holds exactly the live values at op %d", op)
				for position := int64(0); position < pool.Len(); position++ {
					handle := pool.KeyAt(position)
					value, ok := pool.Read(handle)
					assert.True(t, ok, "position %d pairs with a live handle", position)
					assert.Equal(t, data[position], value, "position %d pairs with its value", position)
				}
			}
		}

		// Check
		assert.Equal(t, int64(len(reference)), pool.Len(), "size agrees with reference")
		for handle, expected := range reference {
			value, ok := pool.Read(handle)
			assert.True(t, ok, "live handle resolves")
			assert.Equal(t, expected, value, "live handle holds its value")
		}
	})
}
