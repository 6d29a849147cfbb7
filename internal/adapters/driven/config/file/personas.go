package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ghostvault-labs/ghostvault/internal/core/domain"
	"github.com/ghostvault-labs/ghostvault/internal/core/ports/driven"
)

// Ensure PersonaStore implements the interface.
var _ driven.PersonaStore = (*PersonaStore)(nil)

// PersonaStore loads persona instructions from user-editable files on disk.
// Instructions are loaded from a configurable directory with fallback to
// embedded defaults.
//
// The store uses lazy initialisation - files are only created when first
// accessed, not in the constructor. This makes testing easier and avoids
// unexpected I/O.
type PersonaStore struct {
	mu         sync.RWMutex
	personaDir string
	cache      map[string]string
	initOnce   sync.Once
	initErr    error
}

// defaultPersonas contains embedded default persona instructions.
// These are used when user files don't exist and as the initial content
// for new files.
//
//nolint:lll // Persona content is intentionally long and should not be wrapped.
var defaultPersonas = map[string]string{
	domain.PersonaArchitect: `You are "The Architect" - a highly technical, detail-oriented AI assistant.
Your responses should:
- Focus on code structure, technical specifications, and implementation details
- Provide deep technical analysis with code examples when relevant
- Break down complex systems into their component parts
- Use precise technical terminology
- Explain the "how" and "why" behind technical decisions
Always base your answers on the provided documents and cite specific technical details.`,

	domain.PersonaExecutive: `You are "The Executive" - a concise, high-level strategic advisor.
Your responses should:
- Be brief and action-oriented
- Use bullet points and structured summaries
- Focus on high-level concepts, key takeaways, and ROI implications
- Avoid technical jargon unless necessary
- Provide strategic insights and recommendations
- Prioritize clarity and brevity
Always base your answers on the provided documents and highlight key business insights.`,

	domain.PersonaSkeptic: `You are "The Skeptic" - a critical analyst who challenges assumptions.
Your responses should:
- Question assumptions and demand evidence
- Point out potential weaknesses or gaps in reasoning
- Ask probing questions about the provided information
- Highlight contradictions or inconsistencies in the documents
- Require strict proof and logical reasoning
- Challenge claims that lack sufficient support
Always base your critique on the provided documents and demand rigorous evidence for all claims.`,
}

// NewPersonaStore creates a new file-based persona store.
// If personaDir is empty, defaults to ~/.ghostvault/personas/.
//
// The constructor does not perform any I/O - directory creation and
// file writes happen lazily on first Load() call.
func NewPersonaStore(personaDir string) (*PersonaStore, error) {
	if personaDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		personaDir = filepath.Join(home, ".ghostvault", "personas")
	}

	return &PersonaStore{
		personaDir: personaDir,
		cache:      make(map[string]string),
	}, nil
}

// Load returns the persona instruction for the given name.
// On first call, initialises the persona directory and creates default files.
// Returns cached value if available, otherwise loads from file.
// Falls back to embedded default if file doesn't exist.
func (s *PersonaStore) Load(name string) (string, error) {
	// Ensure directory and defaults exist (lazy init)
	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		// Fall back to embedded defaults if init failed
		if instruction, ok := defaultPersonas[name]; ok {
			return instruction, nil
		}
		return "", fmt.Errorf("persona store init failed: %w", s.initErr)
	}

	// Check cache first (read lock)
	s.mu.RLock()
	if instruction, ok := s.cache[name]; ok {
		s.mu.RUnlock()
		return instruction, nil
	}
	s.mu.RUnlock()

	// Load from file (no lock held during I/O)
	instruction, err := s.loadFromFile(name)
	if err != nil {
		// Fall back to embedded default
		if defaultInstruction, ok := defaultPersonas[name]; ok {
			return defaultInstruction, nil
		}
		return "", fmt.Errorf("load persona %q: %w", name, err)
	}

	// Cache the result (write lock)
	// Use double-check pattern to avoid overwriting concurrent loads
	s.mu.Lock()
	if _, ok := s.cache[name]; !ok {
		s.cache[name] = instruction
	} else {
		// Another goroutine loaded it first, use their value
		instruction = s.cache[name]
	}
	s.mu.Unlock()

	return instruction, nil
}

// Reload clears the persona cache, forcing fresh loads from disk.
func (s *PersonaStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Dir returns the persona directory path.
func (s *PersonaStore) Dir() string {
	return s.personaDir
}

// initialise creates the persona directory and default files.
// Called once via sync.Once on first Load().
func (s *PersonaStore) initialise() {
	// Create directory
	if err := os.MkdirAll(s.personaDir, 0700); err != nil {
		s.initErr = fmt.Errorf("create persona directory: %w", err)
		return
	}

	// Create default persona files (only if they don't exist)
	for name, content := range defaultPersonas {
		path := filepath.Join(s.personaDir, name+".txt")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.WriteFile(path, []byte(content), 0600); err != nil {
				s.initErr = fmt.Errorf("create default persona %q: %w", name, err)
				return
			}
		}
	}

	// Create README
	if err := s.createReadme(); err != nil {
		s.initErr = err
	}
}

// loadFromFile reads a persona instruction from disk.
func (s *PersonaStore) loadFromFile(name string) (string, error) {
	path := filepath.Join(s.personaDir, name+".txt")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// createReadme writes a README file explaining the personas directory.
func (s *PersonaStore) createReadme() error {
	path := filepath.Join(s.personaDir, "README.md")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil // Already exists or stat error (ignore)
	}

	content := `# GhostVault Personas

This directory contains the customisable persona instructions used when
answering questions.

## Files

- ` + "`the-architect.txt`" + ` - Technical, detail-oriented answers
- ` + "`the-executive.txt`" + ` - Brief, strategic, bullet-point answers
- ` + "`the-skeptic.txt`" + ` - Critical answers that challenge assumptions

## Customisation

Edit any file to customise a persona. Changes take effect on the next
session.
`
	return os.WriteFile(path, []byte(content), 0600)
}
