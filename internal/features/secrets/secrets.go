// Package secrets reads and writes the age-encrypted dotenv file that
// supplies credentials to the process-manager configuration.
package secrets

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"filippo.io/age"
	"filippo.io/age/armor"
	"github.com/joho/godotenv"
)

// FileName is the encrypted env file looked up in the package root
const FileName = ".env.age"

// PasswordEnv names the variable holding the scrypt passphrase
const PasswordEnv = "AGE_ENCRYPTION_PASSWORD"

// ErrNoPassword is returned when an encrypted file exists but no passphrase is set
var ErrNoPassword = errors.New(PasswordEnv + " environment variable is not set")

// Load decrypts the dotenv file at path. A missing file yields no values.
func Load(path, password string) (map[string]string, error) {
	encryptedData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if password == "" {
		return nil, fmt.Errorf("cannot decrypt %s: %w", path, ErrNoPassword)
	}

	identity, err := age.NewScryptIdentity(password)
	if err != nil {
		return nil, fmt.Errorf("failed to create age identity: %w", err)
	}

	data, err := decrypt(encryptedData, identity)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt %s: %w", path, err)
	}

	values, err := godotenv.Unmarshal(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse decrypted %s: %w", path, err)
	}

	return values, nil
}

// Seal encrypts dotenv content with password in armored format
func Seal(plaintext []byte, password string) ([]byte, error) {
	if password == "" {
		return nil, ErrNoPassword
	}

	// refuse content that would not load back
	if _, err := godotenv.Unmarshal(string(plaintext)); err != nil {
		return nil, fmt.Errorf("invalid dotenv content: %w", err)
	}

	recipient, err := age.NewScryptRecipient(password)
	if err != nil {
		return nil, fmt.Errorf("failed to create age recipient: %w", err)
	}

	var encryptedBuf bytes.Buffer
	armorWriter := armor.NewWriter(&encryptedBuf)

	ageWriter, err := age.Encrypt(armorWriter, recipient)
	if err != nil {
		return nil, fmt.Errorf("failed to create age writer: %w", err)
	}

	if _, err := ageWriter.Write(plaintext); err != nil {
		return nil, fmt.Errorf("failed to write data: %w", err)
	}

	if err := ageWriter.Close(); err != nil {
		return nil, fmt.Errorf("failed to close age writer: %w", err)
	}

	if err := armorWriter.Close(); err != nil {
		return nil, fmt.Errorf("failed to close armor writer: %w", err)
	}

	return encryptedBuf.Bytes(), nil
}

func decrypt(encryptedData []byte, identity age.Identity) ([]byte, error) {
	var ageReader io.Reader
	if bytes.HasPrefix(encryptedData, []byte("-----BEGIN AGE ENCRYPTED FILE-----")) {
		ageReader = armor.NewReader(bytes.NewReader(encryptedData))
	} else {
		ageReader = bytes.NewReader(encryptedData)
	}

	reader, err := age.Decrypt(ageReader, identity)
	if err != nil {
		return nil, err
	}

	return io.ReadAll(reader)
}
