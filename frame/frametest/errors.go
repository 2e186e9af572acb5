package frametest

import (
	"fmt"

	"github.com/xaionaro-go/drmprime/types"
)

var errAlloc = fmt.Errorf("test allocator limit reached: %w", types.ErrNoMem)
