// Package model exposes the library-neutral field descriptor that sits
// between form libraries and JSON Schema fragments. Libraries report an
// Origin (kind, marker, widget, attributes and validator rules), Describe
// folds it into a Descriptor, and Encode renders the draft-04 fragment.
// Decode goes the other way: the kind comes from a marker the destination
// library knows, then from enum, string format and type, in that order.
// Constraint bounds are pointers so a zero bound is never mistaken for unset.
package model
