package convert

import (
	"github.com/jinzhu/copier"
)

// CopyStruct copies matching fields from src into dst and returns dst.
// dst must be a pointer to a struct.
func CopyStruct(src interface{}, dst interface{}) interface{} {
	_ = copier.Copy(dst, src)
	return dst
}
