// Package sitechat provides a question-answering assistant scoped to a
// single website. It plans site-restricted search queries from a user
// question, fetches and cleans the matching pages, assembles the results
// into a bounded context, and hands that context to a language model for
// answer generation.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., http/, trafilatura/, gemini/).
package sitechat
