// Package conventional validates Korean conventional commit messages of the
// form "type(scope): 설명".
package conventional
