// Package validator checks a finished AsyncAPI document.
//
// Validation runs structural checks (required fields, enumerations) and then
// cross-reference checks (every local "$ref" resolves). Every check is
// independent, so a single run reports all problems. Errors make a document
// invalid; warnings never do.
//
// # Quick Start
//
//	result := validator.Validate(doc)
//	if !result.Valid {
//		for _, msg := range result.ErrorMessages() {
//			fmt.Println(msg)
//		}
//	}
//
// [QuickCheck] is a cheap gate that only looks for a version, an info block
// and at least one channel or operation.
//
// # Options
//
// [WithIncludeWarnings] drops warnings from the result when disabled.
// [WithStrictMode] adds best practice warnings for operations without a
// summary and messages without a content type.
package validator
