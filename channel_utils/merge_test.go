package channel_utils

import (
	"errors"
	"sort"
	"testing"
)

type goroutineDispatcher struct{}

func (goroutineDispatcher) Submit(task func()) error {
	go task()
	return nil
}

type failingDispatcher struct{}

func (failingDispatcher) Submit(task func()) error {
	return errors.New("pool exhausted")
}

func TestMergeChannels_DrainsAllSources(t *testing.T) {
	first := make(chan string, 2)
	second := make(chan string, 2)
	first <- "a"
	first <- "b"
	second <- "c"
	close(first)
	close(second)

	merged, err := MergeChannels[string](goroutineDispatcher{}, first, second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got []string
	for val := range merged {
		got = append(got, val)
	}

	sort.Strings(got)
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("expected %d values, got %d", len(want), len(got))
	}
	for i, val := range want {
		if got[i] != val {
			t.Errorf("expected %q at %d, got %q", val, i, got[i])
		}
	}
}

func TestMergeChannels_ClosesWhenSourcesClose(t *testing.T) {
	src := make(chan int)
	close(src)

	merged, err := MergeChannels[int](goroutineDispatcher{}, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := <-merged; ok {
		t.Error("expected merged channel to be closed")
	}
}

func TestMergeChannels_SubmitFailure(t *testing.T) {
	src := make(chan int)

	_, err := MergeChannels[int](failingDispatcher{}, src)
	if err == nil {
		t.Fatal("expected an error when the worker pool rejects the task")
	}
}
