package util

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/disintegration/imaging"
)

// GetSafeContentType 通过嗅探文件头判定内容类型，不信任客户端声明
func GetSafeContentType(reader io.ReadSeeker) (string, error) {
	buf := make([]byte, 512)
	n, err := reader.Read(buf)
	if err != nil && err != io.EOF {
		return "", err
	}
	if _, err = reader.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	return http.DetectContentType(buf[:n]), nil
}

// GetImageDimensions 解码图片并返回宽高
func GetImageDimensions(reader io.ReadSeeker) (int, int, error) {
	img, err := imaging.Decode(reader)
	if err != nil {
		return 0, 0, fmt.Errorf("图片解码失败: %w", err)
	}
	if _, err = reader.Seek(0, io.SeekStart); err != nil {
		return 0, 0, err
	}
	bounds := img.Bounds()
	return bounds.Dx(), bounds.Dy(), nil
}

// ShrinkImage 将图片最长边收缩到 maxEdge 以内，输出 JPEG 字节流
func ShrinkImage(reader io.Reader, maxEdge int) (*bytes.Buffer, error) {
	img, err := imaging.Decode(reader, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("图片解码失败: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxEdge || bounds.Dy() > maxEdge {
		img = imaging.Fit(img, maxEdge, maxEdge, imaging.Lanczos)
	}

	out := &bytes.Buffer{}
	if err = imaging.Encode(out, img, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return nil, fmt.Errorf("图片编码失败: %w", err)
	}
	return out, nil
}
