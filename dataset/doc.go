// Package dataset turns a directory of labeled recordings into MFCC training data.
//
// Every immediate subdirectory of the dataset root is one class. Its recordings are
// decoded, cut into a fixed number of equal segments and each segment becomes one
// MFCC matrix paired with the class label. Segments that do not yield the expected
// number of frames are dropped.
//
// The result is a Record with three parallel fields:
//
//	mapping   class names, index = class id
//	labels    one label per kept segment
//	mfcc      one frames x coefficients matrix per kept segment
//
// Records are written as JSON (default), YAML or msgpack.
package dataset
