package models

import apierrors "github.com/diogo/funkychat/internal/errors"

// Reply is the outcome of one exchange with a backend: either reply text
// or a typed error. It is turned into chat content only by Content.
type Reply struct {
	Backend BackendID
	Text    string
	Err     error
}

// OK reports whether the backend answered successfully
func (r Reply) OK() bool {
	return r.Err == nil
}

// Kind returns the error kind of the reply
func (r Reply) Kind() apierrors.ErrorKind {
	return apierrors.Kind(r.Err)
}

// Content returns the text to append to the transcript
func (r Reply) Content() string {
	if r.Err != nil {
		return apierrors.DisplayText(r.Err)
	}
	return r.Text
}
