package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeImage_RoundTrip(t *testing.T) {
	img := EncodeImage("image/jpeg", []byte{0xff, 0xd8, 0xff})

	assert.Equal(t, EncodedImage("data:image/jpeg;base64,/9j/"), img)
	assert.True(t, img.IsValid())
	assert.Equal(t, "image/jpeg", img.MediaType())
	assert.Equal(t, 3, img.Size())

	mediaType, data, err := img.Decode()
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", mediaType)
	assert.Equal(t, []byte{0xff, 0xd8, 0xff}, data)
}

func TestEncodedImage_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		payload EncodedImage
	}{
		{"empty", ""},
		{"not a data url", "https://example.com/a.png"},
		{"not an image", "data:text/plain;base64,aGk="},
		{"missing comma", "data:image/png;base64"},
		{"not base64 encoded", "data:image/png,rawbytes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, tt.payload.IsValid())
			_, _, err := tt.payload.Decode()
			assert.True(t, errors.Is(err, ErrInvalidPayload))
		})
	}
}

func TestEncodedImage_CorruptBody(t *testing.T) {
	img := EncodedImage("data:image/png;base64,!!!")

	assert.False(t, img.IsValid())
	assert.Equal(t, "image/png", img.MediaType())
	_, _, err := img.Decode()
	assert.True(t, errors.Is(err, ErrInvalidPayload))
}

func TestInspection_AddPhotos_RejectsCorruptBody(t *testing.T) {
	schema := DefaultSchema()
	in := NewInspection("corrupt", Today())

	_, err := in.AddPhotos(schema, ItemPhotoFront, []EncodedImage{"data:image/jpeg;base64,@@@"})

	assert.ErrorIs(t, err, ErrInvalidPayload)
	assert.Empty(t, in.Photos[ItemPhotoFront])
}

func TestEncodedImage_IsAbsent(t *testing.T) {
	assert.True(t, EncodedImage("").IsAbsent())
	assert.False(t, EncodeImage("image/png", []byte{1}).IsAbsent())
}
