package vpx

import "testing"

func TestSoundRoundTrip(t *testing.T) {
	target := uint32(2)
	s := &SoundData{
		Name: "hit.wav", Path: "hit.wav", InternalName: "snd_hit",
		SampleRate: 44100, Data: []byte{1, 2, 3, 4, 5},
		OutputTarget: &target,
	}
	data := WriteSound(s)
	got, err := ReadSound(data, nil)
	if err != nil {
		t.Fatalf("ReadSound: %v", err)
	}
	if got.Name != s.Name || got.SampleRate != s.SampleRate {
		t.Fatalf("got = %+v", got)
	}
	if string(got.Data) != string(s.Data) {
		t.Fatalf("data = %v, want %v", got.Data, s.Data)
	}
	if got.OutputTarget == nil || *got.OutputTarget != target {
		t.Fatalf("OutputTarget = %v, want %d", got.OutputTarget, target)
	}
}

func TestSoundMissingTrailerRejected(t *testing.T) {
	s := &SoundData{Name: "x", SampleRate: 8000}
	data := WriteSound(s)
	corrupted := data[:len(data)-len(soundTrailer)]
	corrupted = append(corrupted, 1, 2, 3, 4)
	if _, err := ReadSound(corrupted, nil); err == nil {
		t.Fatal("expected error for corrupted trailer")
	}
}

func TestSoundWithoutOutputTarget(t *testing.T) {
	s := &SoundData{Name: "legacy", SampleRate: 22050}
	data := WriteSound(s)
	got, err := ReadSound(data, nil)
	if err != nil {
		t.Fatalf("ReadSound: %v", err)
	}
	if got.OutputTarget != nil {
		t.Fatalf("OutputTarget = %v, want nil", got.OutputTarget)
	}
}
