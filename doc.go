// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jpull implements a pull-based JSON scanner and reader.
//
// # Scanning
//
// The Scanner type implements a lexical scanner for JSON. Construct a scanner
// from an io.Reader and call its Next method to iterate over the stream. Next
// advances to the next input token and returns nil, or reports an error:
//
//	s, err := jpull.NewScanner(input, nil)
//	if err != nil {
//	   log.Fatalf("NewScanner: %v", err)
//	}
//	defer s.Close()
//	for s.Next() == nil {
//	   log.Printf("Next token: %v", s.Token())
//	}
//
// Next returns io.EOF when the input has been fully consumed. Any other error
// indicates an I/O or lexical error in the input.
//
//	if s.Err() != io.EOF {
//	   log.Fatalf("Scanning failed: %v", err)
//	}
//
// # Reading
//
// The Reader type is a cursor over the structure of a single JSON value. The
// caller drives the Reader, asking for the value it expects at each position:
//
//	r, err := jpull.NewReaderString(`{"a":1,"b":[2,3]}`, nil)
//	...
//	defer r.Close()
//	r.Object()
//	for {
//	   ok, err := r.Next()
//	   if err != nil {
//	      return err
//	   } else if !ok {
//	      break // end of the object
//	   }
//	   key, _ := r.Key()
//	   ...
//	}
//
// Inside a container, Next advances to each member or element and reports
// false at the end of the container. Pop skips the rest of a container
// without decoding it. Nested containers are tracked without recursion, so
// the depth of the input is limited only by memory.
//
// Errors in the input are reported with concrete type *SyntaxError. If the
// value at the current position is not one the caller asked for, the error
// has concrete type *TokenMismatchError. Calling a method in a state where
// it makes no sense, such as Next at the document root, reports a
// *UsageError.
//
// # Buffers
//
// The scratch buffers used by scanners and readers are drawn from a
// bufpool.Pool, which may be set in the Options. Strings and numbers that
// outlive the current position are returned as values from the lazy
// package, which own a copy of their text.
package jpull
