package fileurl

import (
	"os"
	"path/filepath"
)

// IsDir determines if the given path is a directory
// IsDir 判断所给路径是否为文件夹
func IsDir(path string) bool {
	s, err := os.Stat(path)
	if err != nil {
		return false
	}
	return s.IsDir()
}

// IsExist determines if the given path exists
// IsExist 判断所给路径是否存在
func IsExist(dst string) bool {
	_, err := os.Stat(dst)
	if err != nil {
		return os.IsExist(err)
	}
	return true
}

// CreatePath creates the parent directory of dst
// CreatePath 创建 dst 的父目录
func CreatePath(dst string, perm os.FileMode) error {
	return os.MkdirAll(filepath.Dir(dst), perm)
}

// WriteFileIfAbsent writes content to dst unless dst already exists
// WriteFileIfAbsent 当 dst 不存在时写入内容
func WriteFileIfAbsent(dst string, content []byte, perm os.FileMode) (bool, error) {
	if IsExist(dst) {
		return false, nil
	}
	if err := CreatePath(dst, os.ModePerm); err != nil {
		return false, err
	}
	if err := os.WriteFile(dst, content, perm); err != nil {
		return false, err
	}
	return true, nil
}
