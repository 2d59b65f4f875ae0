package domain

import "errors"

var (
	ErrAssetNotFound = errors.New("asset not found")
	ErrBlobMissing   = errors.New("blob missing from storage")
	ErrNotEntitled   = errors.New("not entitled")
	ErrNoIdentity    = errors.New("no authenticated identity")
)
