package gettext

import (
	"reflect"
	"testing"
)

// assert_equal fails the test when two strings differ, without stopping it:
// translation lookups are cheap enough to check many per test.
func assert_equal(t *testing.T, got string, want string) {
	t.Helper()
	if got != want {
		t.Logf("got %q, want %q", got, want)
		t.Fail()
	}
}

func assertDeepEqual(t *testing.T, got, want interface{}) {
	t.Helper()
	if !reflect.DeepEqual(got, want) {
		t.Logf("got %#v, want %#v", got, want)
		t.Fail()
	}
}
