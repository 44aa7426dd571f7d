package restyutil

import (
	"fmt"
	"sync/atomic"

	"github.com/go-resty/resty/v2"
)

type InstrumentOutput interface {
	Write(id string, contents string)
}

// InstrumentClient writes a dump of every request/response pair made by
// `client` to `output`. Dumps are numbered in the order the responses
// arrive and prefixed with `prefix`.
//
// `output` can be nil, in which case this is a no-op.
func InstrumentClient(client *resty.Client, prefix string, output InstrumentOutput) {
	if output == nil {
		return
	}

	var idcounter uint64
	client.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
		id := atomic.AddUint64(&idcounter, 1)
		output.Write(fmt.Sprintf("%s%03d.txt", prefix, id), formatHttpMessage(res))
		return nil
	})
}
