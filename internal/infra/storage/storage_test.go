package storage

import (
	"bytes"
	"testing"
)

func TestReadMissingKey(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	b, err := fs.Read("appCache")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if b != nil {
		t.Errorf("Read missing key = %q, want nil", b)
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	blob := []byte(`{"mostrarValor":true}`)
	if err := fs.Write("appCache", blob); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := fs.Read("appCache")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !bytes.Equal(got, blob) {
		t.Errorf("Read = %q, want %q", got, blob)
	}
}

func TestWriteOverwrites(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	if err := fs.Write("appCache", []byte(`old`)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := fs.Write("appCache", []byte(`new`)); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, _ := fs.Read("appCache")
	if string(got) != "new" {
		t.Errorf("Read = %q, want new", got)
	}
}

func TestDeleteMissingKeyIsNoop(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	if err := fs.Delete("never-written"); err != nil {
		t.Errorf("Delete missing key = %v, want nil", err)
	}
}

func TestDeleteRemovesBlob(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	if err := fs.Write("appCache", []byte(`x`)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := fs.Delete("appCache"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	b, err := fs.Read("appCache")
	if err != nil || b != nil {
		t.Errorf("Read after delete = (%q, %v), want (nil, nil)", b, err)
	}
}
