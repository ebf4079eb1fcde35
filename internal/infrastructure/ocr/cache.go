package ocr

import (
	"context"
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"image"
	"io"

	"github.com/corona10/goimagehash"
	lru "github.com/hashicorp/golang-lru/v2"

	"allow-clicker/internal/domain/entity"
	"allow-clicker/internal/domain/port"
)

// DefaultCacheSize размер кэша по умолчанию
const DefaultCacheSize = 64

// cacheKey: перцептивный хэш отбирает кандидатов, точный хэш пикселей исключает
// совпадение разных надписей одного размера
type cacheKey struct {
	dhash   uint64
	content uint64
	w, h    int
}

// CachedRecognizer запоминает результаты распознавания по содержимому фрагмента.
// Диалог висит на экране несколько циклов подряд, и OCR одного и того же фрагмента не повторяется.
type CachedRecognizer struct {
	next  port.TextRecognizer
	cache *lru.Cache[cacheKey, entity.Recognition]
}

func NewCachedRecognizer(next port.TextRecognizer, size int) (*CachedRecognizer, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[cacheKey, entity.Recognition](size)
	if err != nil {
		return nil, fmt.Errorf("create ocr cache: %w", err)
	}
	return &CachedRecognizer{next: next, cache: cache}, nil
}

func (c *CachedRecognizer) Name() string { return c.next.Name() + "+cache" }

// Recognize возвращает результат из кэша или вызывает движок. Ошибки не кэшируются.
func (c *CachedRecognizer) Recognize(ctx context.Context, img image.Image) (entity.Recognition, error) {
	key, ok := keyOf(img)
	if ok {
		if rec, hit := c.cache.Get(key); hit {
			return rec, nil
		}
	}

	rec, err := c.next.Recognize(ctx, img)
	if err != nil {
		return rec, err
	}
	if ok {
		c.cache.Add(key, rec)
	}
	return rec, nil
}

// Len возвращает число закэшированных результатов
func (c *CachedRecognizer) Len() int {
	return c.cache.Len()
}

// Close закрывает движок, если он держит ресурсы
func (c *CachedRecognizer) Close() error {
	if closer, ok := c.next.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func keyOf(img image.Image) (cacheKey, bool) {
	hash, err := goimagehash.DifferenceHash(img)
	if err != nil {
		return cacheKey{}, false
	}
	b := img.Bounds()
	return cacheKey{dhash: hash.GetHash(), content: contentHash(img), w: b.Dx(), h: b.Dy()}, true
}

// contentHash считает FNV-1a по пикселям фрагмента с учётом SubImage.
func contentHash(img image.Image) uint64 {
	h := fnv.New64a()
	b := img.Bounds()

	switch m := img.(type) {
	case *image.RGBA:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			i := m.PixOffset(b.Min.X, y)
			h.Write(m.Pix[i : i+b.Dx()*4])
		}
	case *image.NRGBA:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			i := m.PixOffset(b.Min.X, y)
			h.Write(m.Pix[i : i+b.Dx()*4])
		}
	default:
		var px [8]byte
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				r, g, bl, a := img.At(x, y).RGBA()
				binary.LittleEndian.PutUint16(px[0:], uint16(r))
				binary.LittleEndian.PutUint16(px[2:], uint16(g))
				binary.LittleEndian.PutUint16(px[4:], uint16(bl))
				binary.LittleEndian.PutUint16(px[6:], uint16(a))
				h.Write(px[:])
			}
		}
	}
	return h.Sum64()
}

var _ port.TextRecognizer = (*CachedRecognizer)(nil)
