package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/staranto/dsvcut/internal/meta"
	"github.com/urfave/cli/v3"
)

// CompletionUsage is the one-line description of the completion command.
const CompletionUsage = "generate shell completion script"

// CompletionExamples are shown in completion --help.
var CompletionExamples = [][2]string{
	{"source <(dsvcut completion bash)", "enable bash completion for this session"},
	{`dsvcut completion zsh > "${fpath[1]}/_dsvcut"`, "install zsh completion"},
}

const bashCompletionScript = `# bash completion for dsvcut
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_dsvcut()
{
    local cur prev
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 && "$cur" != -* ]]; then
        COMPREPLY=( $(compgen -W "completion" -- "$cur") )
        return 0
    fi

    if [[ ${COMP_WORDS[1]} == "completion" ]]; then
        COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
        return 0
    fi

    local opts="--header_file -h --input -f --columns -c --list_header -l --format --delimiter -d --on_bad_line --color --no-color --examples --tldr --help --version -v"

    case "$prev" in
        --header_file|-h|--input|-f)
            COMPREPLY=( $(compgen -f -- "$cur") )
            return 0
            ;;
        --format)
            COMPREPLY=( $(compgen -W "text json yaml" -- "$cur") )
            return 0
            ;;
        --delimiter|-d)
            COMPREPLY=( $(compgen -W "auto comma tab" -- "$cur") )
            return 0
            ;;
        --on_bad_line)
            COMPREPLY=( $(compgen -W "fail skip" -- "$cur") )
            return 0
            ;;
        --columns|-c)
            return 0
            ;;
    esac

    COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    return 0
}

complete -F _dsvcut dsvcut
`

const zshCompletionScript = `#compdef dsvcut

_dsvcut() {
  if [[ $words[2] == completion ]]; then
    _arguments '2: :((bash zsh))'
    return
  fi

  _arguments -C \
    '(-h --header_file)'{-h,--header_file}'[header file]:file:_files' \
    '(-f --input)'{-f,--input}'[input file]:file:_files' \
    '(-c --columns)'{-c,--columns}'[columns to output]:columns' \
    '(-l --list_header)'{-l,--list_header}'[list the header names]' \
    '--format[list_header output format]:format:(text json yaml)' \
    '(-d --delimiter)'{-d,--delimiter}'[data delimiter]:delimiter:(auto comma tab)' \
    '--on_bad_line[bad line policy]:policy:(fail skip)' \
    '(--color --no-color)'{--color,--no-color}'[colored examples]' \
    '--examples[show example invocations]' \
    '--tldr[show tldr page]' \
    '--help[show help]' \
    '(-v --version)'{-v,--version}'[version info]' \
    '1::command:((completion\:"generate shell completion script"))'
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _dsvcut dsvcut
`

func CompletionCommandAction(ctx context.Context, cmd *cli.Command) error {
	w := cmd.Root().Writer
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	switch shell {
	case "bash":
		fmt.Fprint(w, bashCompletionScript)
	case "zsh":
		fmt.Fprint(w, zshCompletionScript)
	case "":
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		if strings.HasSuffix(sh, "zsh") {
			fmt.Fprint(w, zshCompletionScript)
		} else if strings.HasSuffix(sh, "bash") {
			fmt.Fprint(w, bashCompletionScript)
		} else {
			fmt.Fprintln(cmd.Root().ErrWriter, "usage: dsvcut completion [bash|zsh]")
		}
	default:
		return fmt.Errorf("unsupported shell %q (must be bash or zsh)", shell)
	}
	return nil
}

func CompletionCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:        "completion",
		Usage:       CompletionUsage,
		UsageText:   "dsvcut completion [bash|zsh]",
		Description: ExampleText(CompletionExamples),
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: CompletionCommandAction,
	}
}
