package restyutil

import (
	"fmt"
	"sync/atomic"

	"github.com/go-resty/resty/v2"
)

// InstrumentOutput receives the rendered request/response pair of every
// message sent by an instrumented client.
type InstrumentOutput interface {
	Write(id string, contents string)
}

// shared by every client so that dumps of separate sessions never collide
var messageCounter uint64

// InstrumentClient dumps every completed message of `client` to `output`,
// `prefix` distinguishes the dumps of separate clients sharing one output.
// `output` can be nil, in which case this is a no-op.
func InstrumentClient(client *resty.Client, prefix string, output InstrumentOutput) {
	if output == nil {
		return
	}

	client.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
		id := atomic.AddUint64(&messageCounter, 1)
		output.Write(fmt.Sprintf("%s-%03d", prefix, id), formatHttpMessage(res))
		return nil
	})
}
