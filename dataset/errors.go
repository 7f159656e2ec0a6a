package dataset

import "errors"

// ErrNotFound is returned by Get and Patch when the requested id doesn't
// exist in the dataset's table.
var ErrNotFound = errors.New("dataset: record not found")

// ErrAlreadyExists reports that a record with the given id already exists.
// No Insert in this package returns it: Insert over an existing id leaves
// the stored record unchanged and returns nil.
var ErrAlreadyExists = errors.New("dataset: record already exists")
