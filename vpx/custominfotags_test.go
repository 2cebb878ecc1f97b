package vpx

import (
	"reflect"
	"testing"
)

func TestCustomInfoTagsRoundTrip(t *testing.T) {
	cit := &CustomInfoTags{Names: []string{"Notes", "Difficulty", "Theme"}}
	data := WriteCustomInfoTags(cit)

	got, err := ReadCustomInfoTags(data)
	if err != nil {
		t.Fatalf("ReadCustomInfoTags: %v", err)
	}
	if !reflect.DeepEqual(got.Names, cit.Names) {
		t.Fatalf("names = %v, want %v", got.Names, cit.Names)
	}
}

func TestCustomInfoTagsEmpty(t *testing.T) {
	got, err := ReadCustomInfoTags(WriteCustomInfoTags(&CustomInfoTags{}))
	if err != nil {
		t.Fatalf("ReadCustomInfoTags: %v", err)
	}
	if len(got.Names) != 0 {
		t.Fatalf("names = %v, want empty", got.Names)
	}
}
