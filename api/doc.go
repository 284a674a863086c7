// Package api builds the form payloads sent to the REDCap API.
//
// Every request is a POST of form fields to a single endpoint. The resource is
// selected by the content field and, for writes, an action field. Each
// function in this package encodes one resource/action pair from an explicit
// input struct:
//
//	p, err := api.DeleteArms(api.DeleteArmsInput{Arms: []int{2, 3}})
//	// content=arm action=delete arms[0]=2 arms[1]=3
//
// Encoders are pure. They never touch the network and never check values;
// they only guarantee the payload's shape. A required input that is missing
// yields a *MissingArgumentError.
//
// # Lists
//
// List inputs are flattened into indexed keys: arms[0], arms[1], ... in input
// order. An empty list contributes no keys. For required lists a nil slice is
// treated as missing while an empty one is sent as is.
//
// # Import data
//
// Structured data is a Records value, an ordered list of ordered records, so
// both JSON and CSV output keep the caller's field order. JSON is the default
// import format; CSV uses the first record's fields as the header. Imports
// that care about format (metadata, records) take a Data value holding one of
// records, a Table, or text that is already wire-ready.
//
// # Formats
//
// An encoder declares format only when it differs from json, or when the
// resource always needs it (metadata and logs default to csv). The transport
// fills in json for payloads that declare nothing.
package api
