package util

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// S3Uploader : асинхронная загрузка содержимого по pre-signed PUT URL.
// Обработчик отвечает клиенту сразу, не дожидаясь окончания загрузки.
type S3Uploader struct {
	client   *http.Client
	wg       sync.WaitGroup
	errors   chan error
	progress chan int64
}

func NewS3Uploader() *S3Uploader {
	return &S3Uploader{
		client: &http.Client{
			Timeout: 10 * time.Minute,
		},
		errors:   make(chan error, 10),
		progress: make(chan int64, 100),
	}
}

// UploadAsync запускает загрузку байтов в фоне
func (u *S3Uploader) UploadAsync(presignedURL string, contentType string, data []byte) {
	u.wg.Add(1)

	go func() {
		defer u.wg.Done()

		if err := u.upload(presignedURL, contentType, data); err != nil {
			u.errors <- fmt.Errorf("ошибка загрузки в S3: %w", err)
		} else {
			u.progress <- int64(len(data))
		}
	}()
}

func (u *S3Uploader) upload(presignedURL string, contentType string, data []byte) error {
	req, err := http.NewRequest(http.MethodPut, presignedURL, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("ошибка создания запроса: %w", err)
	}

	req.ContentLength = int64(len(data))
	req.Header.Set("Content-Type", contentType)

	resp, err := u.client.Do(req)
	if err != nil {
		return fmt.Errorf("ошибка выполнения запроса: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("ошибка загрузки: статус %d, ответ: %s", resp.StatusCode, string(body))
	}

	return nil
}

// Wait ожидание завершения всех загрузок
func (u *S3Uploader) Wait() error {
	u.wg.Wait()
	close(u.errors)
	close(u.progress)

	if len(u.errors) > 0 {
		return <-u.errors
	}
	return nil
}

// Errors возвращает канал с ошибками
func (u *S3Uploader) Errors() <-chan error {
	return u.errors
}

// Progress возвращает канал с прогрессом
func (u *S3Uploader) Progress() <-chan int64 {
	return u.progress
}
