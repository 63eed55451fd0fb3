package controllers

import (
	"voice-agent-api/application/ports/outbound"
	"voice-agent-api/channel_utils"
)

// streamEvent carries either one generated chunk or a stream failure.
type streamEvent struct {
	chunk string
	err   error
}

// mergeStreamEvents fans the generator's chunk and error channels into a
// single event channel. The merged channel closes once the generator closes
// both sources, which is the end-of-stream signal.
func mergeStreamEvents(workerPool outbound.TaskDispatcher, chunks <-chan string,
	errs <-chan error) (<-chan streamEvent, error) {
	chunkEvents := make(chan streamEvent)
	errEvents := make(chan streamEvent)

	err := workerPool.Submit(func() {
		defer close(chunkEvents)
		for chunk := range chunks {
			chunkEvents <- streamEvent{chunk: chunk}
		}
	})
	if err != nil {
		return nil, err
	}

	err = workerPool.Submit(func() {
		defer close(errEvents)
		for streamErr := range errs {
			errEvents <- streamEvent{err: streamErr}
		}
	})
	if err != nil {
		return nil, err
	}

	return channel_utils.MergeChannels[streamEvent](workerPool, chunkEvents, errEvents)
}
