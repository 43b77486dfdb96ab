package rebase

import (
	"sync"

	"github.com/erraggy/oasrebase/schema"
)

// Memoized rebases one document at most once and hands the same result to
// every caller. The result must be treated as read-only.
//
// It is meant for servers that finish an API document once and then serve
// it to many concurrent requests.
type Memoized struct {
	doc     *schema.Document
	rebaser *Rebaser
	once    sync.Once
	result  *Result
	err     error
}

// NewMemoized wraps doc. A nil rebaser uses New().
func NewMemoized(doc *schema.Document, rebaser *Rebaser) *Memoized {
	if rebaser == nil {
		rebaser = New()
	}
	return &Memoized{doc: doc, rebaser: rebaser}
}

// Result returns the rebased result, building it on first use.
// Concurrent callers block until the single build finishes.
func (m *Memoized) Result() (*Result, error) {
	m.once.Do(func() {
		m.result, m.err = m.rebaser.Rebase(m.doc)
	})
	return m.result, m.err
}

// Document returns the rebased document, building it on first use.
func (m *Memoized) Document() (*schema.Document, error) {
	result, err := m.Result()
	if err != nil {
		return nil, err
	}
	return result.Document, nil
}
