package testutil

// SamplePipeline is a two-stage pipeline in the standard layout. It has 16
// expandable fields spread over 7 levels.
const SamplePipeline = `
pipeline:
  identifier: build_and_deploy
  name: Build and Deploy
  stages:
    - stage:
        identifier: build
        name: Build
        type: CI
        spec:
          execution:
            steps:
              - step:
                  identifier: compile
                  name: Compile
                  type: ShellScript
                  spec:
                    script: make build
              - parallel:
                  - step:
                      identifier: unit
                      type: ShellScript
                      spec:
                        script: make test
                  - step:
                      identifier: lint
                      type: ShellScript
                      spec:
                        script: make lint
              - step:
                  identifier: publish
                  type: Http
                  spec:
                    url: https://example.com/publish
                    method: POST
    - stage:
        identifier: deploy
        name: Deploy
        type: Deployment
        spec:
          execution:
            steps:
              - step:
                  identifier: rollout
                  type: ShellScript
                  spec:
                    script: ./deploy.sh
                    timeout: 30m
            rollbackSteps:
              - step:
                  identifier: rollback
                  type: ShellScript
                  spec:
                    script: ./rollback.sh
`

// SamplePipelineNodes is the number of plan nodes SamplePipeline expands to.
const SamplePipelineNodes = 16
